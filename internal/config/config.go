package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Speshl/gorrc_tank/internal/debounce"
	log "github.com/sirupsen/logrus"
)

var motorNames = []string{"left", "right"}

func GetConfig() Config {
	cfg := Config{
		ServerCfg:  GetServerConfig(),
		CommandCfg: GetCommandConfig(),
		DriveCfg:   GetDriveConfig(),
		LogLevel:   GetStringEnv("LOGLEVEL", DefaultLogLevel),
	}

	log.Printf("app Config: \n%+v\n", cfg)
	return cfg
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Server:         GetStringEnv("SERVER", DefaultServer),
		Key:            GetRawStringEnv("CARKEY", DefaultCarKey),
		Password:       GetRawStringEnv("CARPASSWORD", DefaultPassword),
		SeatCount:      GetIntEnv("SEATCOUNT", DefaultSeatCount),
		StunServer:     GetRawStringEnv("STUNSERVER", DefaultStunServer),
		HealthInterval: GetPositiveIntEnv("HEALTHMS", DefaultHealthInterval),
	}
}

func GetCommandConfig() CommandConfig {
	commandCfg := CommandConfig{
		CommandDriver: GetStringEnv("COMMANDDRIVER", DefaultCommandDriver),
		Address:       byte(GetIntEnv("ADDRESS", DefaultAddress)),
		I2CDevice:     GetStringEnv("I2CDEVICE", DefaultI2CDevice),
		PwmFrequency:  GetPositiveIntEnv("PWMFREQ", DefaultPwmFrequency),
		GpioChip:      GetStringEnv("GPIOCHIP", DefaultGpioChip),
		MotorCfgs:     make([]MotorConfig, 0, MaxSupportedMotors),
	}

	for i := 0; i < MaxSupportedMotors; i++ {
		envPrefix := fmt.Sprintf("MOTOR%d_", i)
		commandCfg.MotorCfgs = append(commandCfg.MotorCfgs, MotorConfig{
			Name:      motorNames[i],
			ChannelA:  GetIntEnv(envPrefix+"CHANNELA", DefaultMotorChannelA[i]),
			ChannelB:  GetIntEnv(envPrefix+"CHANNELB", DefaultMotorChannelB[i]),
			PwmPin:    GetIntEnv(envPrefix+"PWMPIN", DefaultMotorPwmPin[i]),
			EnablePin: GetIntEnv(envPrefix+"ENABLEPIN", DefaultEnablePin),
		})
	}
	return commandCfg
}

func GetDriveConfig() DriveConfig {
	driveCfg := DriveConfig{
		PollInterval:   GetPositiveIntEnv("POLLMS", DefaultPollInterval),
		Failsafe:       GetIntEnv("FAILSAFEMS", DefaultFailsafe),
		PwmFloor:       GetIntEnv("PWMFLOOR", DefaultPwmFloor),
		DebounceFloor:  GetIntEnv("DEBOUNCEFLOOR", DefaultDebounceFloor),
		StickThreshold: GetIntEnv("STICKTHRESHOLD", DefaultStickThreshold),
		MirrorRight:    GetBoolEnv("MIRRORRIGHT", DefaultMirrorRight),
		NetInterface:   GetStringEnv("NETINTERFACE", DefaultNetInterface),
	}

	floor, err := debounce.ValidateFloor(driveCfg.DebounceFloor)
	if err != nil {
		log.Printf("warning: %s, using %d\n", err, floor)
	}
	driveCfg.DebounceFloor = int(floor)

	if driveCfg.PwmFloor < 0 {
		log.Printf("warning: pwm floor %d is negative, using %d\n", driveCfg.PwmFloor, DefaultPwmFloor)
		driveCfg.PwmFloor = DefaultPwmFloor
	}

	if driveCfg.Failsafe < 0 {
		driveCfg.Failsafe = 0
	}

	return driveCfg
}

func GetIntEnv(env string, defaultValue int) int {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseInt(strings.Trim(envValue, "\r"), 0, 32)
		if err != nil {
			log.Printf("warning:%s not parsed - error: %s\n", env, err)
			return defaultValue
		} else {
			return int(value)
		}
	}
}

func GetPositiveIntEnv(env string, defaultValue int) int {
	value := GetIntEnv(env, defaultValue)
	if value <= 0 {
		log.Printf("warning:%s must be positive, using %d\n", env, defaultValue)
		return defaultValue
	}
	return value
}

func GetBoolEnv(env string, defaultValue bool) bool {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		value, err := strconv.ParseBool(strings.Trim(envValue, "\r"))
		if err != nil {
			log.Printf("warning:%s not parsed - error: %s\n", env, err)
			return defaultValue
		} else {
			return value
		}
	}
}

func GetStringEnv(env string, defaultValue string) string {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	} else {
		return strings.ToLower(strings.Trim(envValue, "\r"))
	}
}

// GetRawStringEnv keeps the case of the value, for credentials and urls.
func GetRawStringEnv(env string, defaultValue string) string {
	envValue, found := os.LookupEnv(AppEnvBase + env)
	if !found {
		return defaultValue
	}
	return strings.Trim(envValue, "\r")
}
