package common

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

var Version = "v1.0.0"
var StartTime = time.Now().Unix()

var Port = flag.Int("port", 0, "the listening port (overrides PORT)")
var LogDir = flag.String("log-dir", "", "the log directory")
var EnableGzip = flag.Bool("gzip", true, "enable gzip for API requests and responses")
var PrintVersion = flag.Bool("version", false, "print version and exit")
var PrintHelpFlag = flag.Bool("help", false, "print help and exit")

// SQLitePath is where the tribute records live.
var SQLitePath = "data/tribute-wall.db"

// UploadPath is the uploads root on disk; files saved under it are served
// from the /uploads route.
var UploadPath = "uploads"

var configPort = 3000

// InitConfig resolves runtime settings. Precedence: command line flag, then
// environment, then the config file, then built-in defaults. Must run after
// flag.Parse.
func InitConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		SQLitePath = path
	}
	if path := os.Getenv("UPLOAD_PATH"); path != "" {
		UploadPath = path
	}
	if p := os.Getenv("PORT"); p != "" {
		portInt, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		configPort = portInt
	}
	if v := os.Getenv("ENABLE_GZIP"); v != "" {
		enableGzip, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for ENABLE_GZIP: %w", err)
		}
		*EnableGzip = enableGzip
	}
	if *Port == 0 {
		*Port = configPort
	}
	return nil
}

func PrintHelp() {
	fmt.Println("Tribute Wall " + Version)
	fmt.Println("Usage: tribute-wall [--port <port>] [--log-dir <log directory>]")
	flag.PrintDefaults()
}
