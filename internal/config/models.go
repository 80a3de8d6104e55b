package config

const (
	MaxSupportedMotors = 2
	AppEnvBase         = "GORRC_"

	DefaultServer         = "127.0.0.1:8181"
	DefaultCarKey         = ""
	DefaultPassword       = ""
	DefaultSeatCount      = 1
	DefaultStunServer     = "stun:stun.l.google.com:19302"
	DefaultHealthInterval = 30000 // ms
	DefaultLogLevel       = "info"

	// Default Command Options
	DefaultCommandDriver = "pca9685"
	DefaultAddress       = 0x40
	DefaultI2CDevice     = "/dev/i2c-1"
	DefaultPwmFrequency  = 1000 // Hz
	DefaultGpioChip      = "gpiochip0"
	DefaultEnablePin     = -1 // no standby line

	// Default Drive Options
	DefaultPollInterval   = 20  // ms
	DefaultFailsafe       = 500 // ms, 0 disables
	DefaultPwmFloor       = 80
	DefaultDebounceFloor  = -5
	DefaultStickThreshold = 10
	DefaultMirrorRight    = true
	DefaultNetInterface   = "wlan0"
)

// Default per motor outputs. Channels are PCA9685 channels or BCM pins depending on the driver.
var (
	DefaultMotorChannelA = []int{0, 2}
	DefaultMotorChannelB = []int{1, 3}
	DefaultMotorPwmPin   = []int{12, 13}
)

type Config struct {
	ServerCfg  ServerConfig
	CommandCfg CommandConfig
	DriveCfg   DriveConfig
	LogLevel   string
}

type ServerConfig struct {
	Server         string
	Key            string
	Password       string
	SeatCount      int
	StunServer     string
	HealthInterval int
}

type CommandConfig struct {
	CommandDriver string
	Address       byte
	I2CDevice     string
	PwmFrequency  int
	GpioChip      string
	MotorCfgs     []MotorConfig
}

// MotorConfig describes the outputs of one motor driver slice. ChannelA drives reverse and
// ChannelB forward. PwmPin is only used by the pi_pwm driver, where ChannelA/B are the direction
// pins. EnablePin is a standby line, -1 when the driver has none.
type MotorConfig struct {
	Name      string
	ChannelA  int
	ChannelB  int
	PwmPin    int
	EnablePin int
}

type DriveConfig struct {
	PollInterval   int
	Failsafe       int
	PwmFloor       int
	DebounceFloor  int
	StickThreshold int
	MirrorRight    bool
	NetInterface   string
}
