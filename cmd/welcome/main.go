package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	display "github.com/BeatGlow/welcome"
	"github.com/BeatGlow/welcome/eeprom"
	"github.com/BeatGlow/welcome/framebuffer"
	"github.com/BeatGlow/welcome/internal/config"
	"github.com/BeatGlow/welcome/internal/images"
	"github.com/BeatGlow/welcome/internal/version"
	"github.com/BeatGlow/welcome/settings"
	"github.com/BeatGlow/welcome/text"
	"github.com/BeatGlow/welcome/welcome"
)

func main() {
	// Logger
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	mainCommand := filepath.Base(os.Args[0])

	configFlag := flag.StringP("config", "c", "welcome.yaml", "Configuration file")
	eepromFlag := flag.StringP("eeprom", "e", "", "EEPROM dump file (default from config)")
	modeFlag := flag.StringP("mode", "m", "", "Power-on display mode (default from EEPROM)")
	voltageFlag := flag.Uint16P("voltage", "v", 790, "Battery voltage in hundredths of a volt")
	driverFlag := flag.StringP("driver", "D", "", "Display driver: st7565, ssd1305, ssd1306, sh1106, fbdev or virtual (default from config)")
	pngFlag := flag.StringP("png", "o", "", "Write the virtual display to a PNG file")
	holdFlag := flag.DurationP("hold", "t", 3*time.Second, "Time to keep the screen on before switching the display off")
	debugFlag := flag.BoolP("debug", "d", false, "Enable debug mode")

	flag.Usage = func() {
		fmt.Printf("\nUsage: %s [OPTIONS] COMMAND\n", mainCommand)
		fmt.Printf("\nShow the power-on welcome screen\n")
		fmt.Printf("\nOptions:\n")
		flag.PrintDefaults()
		fmt.Printf("\nCommands:\n")
		fmt.Printf("  show                   Show the power-on screen\n")
		fmt.Printf("  release                Show the release keys prompt\n")
		fmt.Printf("  message LINE1 LINE2    Store the welcome message lines\n")
		fmt.Printf("  mode MODE              Store the power-on display mode\n")
		fmt.Printf("  version                Show the version number\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *debugFlag {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: time.RFC3339Nano})
		logrus.Debugf("Debug mode activated")
	}

	command, args := flag.Arg(0), flag.Args()[1:]
	expectArgs := func(n int) {
		if len(args) != n {
			fmt.Printf("\n\"%s %s\" expects %d argument(s)\n", mainCommand, command, n)
			flag.Usage()
			os.Exit(1)
		}
	}

	if command == "version" {
		fmt.Printf("Version %s\n", version.AppVersion.String())
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		logrus.Fatalf("Unable to load config: %v", err)
	}
	if *eepromFlag != "" {
		cfg.EEPROM = *eepromFlag
	}
	if *driverFlag != "" {
		cfg.Display.Driver = *driverFlag
		if err = cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid display driver: %v", err)
		}
	}

	storage, err := openEEPROM(cfg.EEPROM)
	if err != nil {
		logrus.Fatalf("Unable to open EEPROM: %v", err)
	}

	switch command {
	case "message":
		expectArgs(2)
		if err = settings.SetWelcome(storage, args[0], args[1]); err != nil {
			logrus.Fatal(err)
		}
		saveEEPROM(storage, cfg.EEPROM)

	case "mode":
		expectArgs(1)
		mode, err := welcome.ParseMode(args[0])
		if err != nil {
			logrus.Fatal(err)
		}
		if err = settings.SetPowerOnDisplayMode(storage, mode); err != nil {
			logrus.Fatal(err)
		}
		saveEEPROM(storage, cfg.EEPROM)

	case "show", "release":
		expectArgs(0)
		if err = show(cfg, storage, command == "release", *modeFlag, *voltageFlag, *pngFlag, *holdFlag); err != nil {
			logrus.Fatal(err)
		}

	default:
		fmt.Printf("\n%s is not a %s command\n", command, mainCommand)
		flag.Usage()
		os.Exit(1)
	}
}

func show(cfg *config.Config, storage *eeprom.Image, release bool, modeName string, voltage uint16, pngName string, hold time.Duration) error {
	panel, err := openPanel(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = panel.Close() }()
	logrus.Infof("Using display %s", panel)

	printer, err := text.New()
	if err != nil {
		return err
	}

	curve, err := cfg.Curve()
	if err != nil {
		return err
	}

	bitmap, err := images.Load(cfg.Image.Name)
	if err != nil {
		return err
	}

	composer := welcome.New(display.NewScreen(), panel, welcome.Config{
		Storage:      storage,
		Printer:      printer,
		Percent:      curve.Percent,
		Image:        bitmap,
		ImageSupport: cfg.ImageSupport(),
		Version:      cfg.Version,
	})

	if release {
		err = composer.ReleaseKeys()
	} else {
		var mode welcome.Mode
		if mode, err = powerOnDisplayMode(storage, modeName); err != nil {
			return err
		}
		logrus.Infof("Power-on display mode %s", mode)
		err = composer.Welcome(mode, voltage)
	}
	if err != nil {
		return err
	}

	if pngName != "" {
		return exportPNG(panel, pngName)
	}
	if _, ok := panel.(*display.Virtual); !ok && hold > 0 {
		logrus.Debugf("Holding screen for %s", hold)
		time.Sleep(hold)
	}
	return nil
}

func powerOnDisplayMode(storage *eeprom.Image, name string) (welcome.Mode, error) {
	if name != "" {
		return welcome.ParseMode(name)
	}
	s, err := settings.Load(storage)
	if err != nil {
		return 0, err
	}
	return s.PowerOnDisplayMode, nil
}

func openPanel(cfg *config.Config) (display.Panel, error) {
	switch cfg.Display.Driver {
	case config.DriverVirtual:
		v := display.NewVirtual()
		if cfg.Display.Rotation == 180 {
			if err := v.SetRotation(display.Rotate180); err != nil {
				return nil, err
			}
		}
		return v, nil
	case config.DriverFBDev:
		return openFramebuffer(cfg.Display)
	}

	if _, err := host.Init(); err != nil {
		return nil, err
	}

	var (
		param       = cfg.Display
		displayConf = &display.Config{
			Width:     display.Width,
			Height:    display.Height,
			Contrast:  param.Contrast,
			Backlight: gpioreg.ByName(param.Backlight),
		}
		conn display.Conn
		err  error
	)
	if param.Rotation == 180 {
		displayConf.Rotation = display.Rotate180
	}

	switch param.Bus {
	case config.BusI2C:
		conn, err = display.OpenI2C(&display.I2CConfig{
			Device: param.I2C.Device,
			Addr:   param.I2C.Address,
			Reset:  gpioreg.ByName(param.I2C.Reset),
		})
	case config.BusSPI:
		spiConf := display.DefaultSPIConfig
		spiConf.Port = param.SPI.Port
		spiConf.SpeedHz = param.SPI.SpeedHz
		spiConf.Reset = gpioreg.ByName(param.SPI.Reset)
		spiConf.DC = gpioreg.ByName(param.SPI.DC)
		spiConf.CE = gpioreg.ByName(param.SPI.CS)
		conn, err = display.OpenSPI(&spiConf)
	default:
		err = fmt.Errorf("unsupported bus type %q", param.Bus)
	}
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Using connection %s", conn)

	var panel display.Panel
	switch param.Driver {
	case config.DriverST7565:
		panel, err = display.ST7565(conn, displayConf)
	case config.DriverSSD1305:
		panel, err = display.SSD1305(conn, displayConf)
	case config.DriverSSD1306:
		panel, err = display.SSD1306(conn, displayConf)
	case config.DriverSH1106:
		panel, err = display.SH1106(conn, displayConf)
	default:
		err = fmt.Errorf("unsupported driver %q", param.Driver)
	}
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return panel, nil
}

func openFramebuffer(param config.DisplayParam) (display.Panel, error) {
	panel, err := framebuffer.Open(param.Device)
	if err != nil {
		return nil, err
	}
	if param.Rotation == 180 {
		if err = panel.SetRotation(display.Rotate180); err != nil {
			_ = panel.Close()
			return nil, err
		}
	}
	return panel, nil
}

func openEEPROM(name string) (*eeprom.Image, error) {
	storage, err := eeprom.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Infof("No EEPROM dump %s, starting from an erased image", name)
		return eeprom.New(), nil
	}
	return storage, err
}

func saveEEPROM(storage *eeprom.Image, name string) {
	if err := storage.Save(name); err != nil {
		logrus.Fatalf("Unable to save EEPROM: %v", err)
	}
	logrus.Infof("Saved EEPROM dump %s", name)
}

func exportPNG(panel display.Panel, name string) error {
	v, ok := panel.(*display.Virtual)
	if !ok {
		return fmt.Errorf("can't export %s to PNG, use the %s driver", panel, config.DriverVirtual)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, v.Image()); err != nil {
		_ = f.Close()
		return err
	}
	logrus.Infof("Saved display to %s", name)
	return f.Close()
}
