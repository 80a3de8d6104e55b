package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDriveConfigDefaults(t *testing.T) {
	cfg := GetDriveConfig()
	assert.Equal(t, DriveConfig{
		PollInterval:   DefaultPollInterval,
		Failsafe:       DefaultFailsafe,
		PwmFloor:       DefaultPwmFloor,
		DebounceFloor:  DefaultDebounceFloor,
		StickThreshold: DefaultStickThreshold,
		MirrorRight:    DefaultMirrorRight,
		NetInterface:   DefaultNetInterface,
	}, cfg)
}

func TestGetDriveConfigFromEnv(t *testing.T) {
	t.Setenv(AppEnvBase+"POLLMS", "10")
	t.Setenv(AppEnvBase+"FAILSAFEMS", "0")
	t.Setenv(AppEnvBase+"PWMFLOOR", "40")
	t.Setenv(AppEnvBase+"DEBOUNCEFLOOR", "-7")
	t.Setenv(AppEnvBase+"MIRRORRIGHT", "false")
	t.Setenv(AppEnvBase+"NETINTERFACE", "ETH0\r")

	cfg := GetDriveConfig()
	assert.Equal(t, 10, cfg.PollInterval)
	assert.Equal(t, 0, cfg.Failsafe)
	assert.Equal(t, 40, cfg.PwmFloor)
	assert.Equal(t, -7, cfg.DebounceFloor)
	assert.False(t, cfg.MirrorRight)
	assert.Equal(t, "eth0", cfg.NetInterface)
}

func TestGetDriveConfigRejectsBadValues(t *testing.T) {
	t.Setenv(AppEnvBase+"POLLMS", "0")
	t.Setenv(AppEnvBase+"FAILSAFEMS", "-3")
	t.Setenv(AppEnvBase+"PWMFLOOR", "-1")
	t.Setenv(AppEnvBase+"DEBOUNCEFLOOR", "-4")
	t.Setenv(AppEnvBase+"STICKTHRESHOLD", "ten")

	cfg := GetDriveConfig()
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Equal(t, 0, cfg.Failsafe)
	assert.Equal(t, DefaultPwmFloor, cfg.PwmFloor)
	assert.Equal(t, DefaultDebounceFloor, cfg.DebounceFloor)
	assert.Equal(t, DefaultStickThreshold, cfg.StickThreshold)
}

func TestGetCommandConfig(t *testing.T) {
	t.Setenv(AppEnvBase+"COMMANDDRIVER", "PIPWM")
	t.Setenv(AppEnvBase+"ADDRESS", "0x41")
	t.Setenv(AppEnvBase+"MOTOR1_CHANNELA", "5")
	t.Setenv(AppEnvBase+"MOTOR1_ENABLEPIN", "22")

	cfg := GetCommandConfig()
	assert.Equal(t, "pipwm", cfg.CommandDriver)
	assert.Equal(t, byte(0x41), cfg.Address)
	require.Len(t, cfg.MotorCfgs, MaxSupportedMotors)

	assert.Equal(t, MotorConfig{Name: "left", ChannelA: 0, ChannelB: 1, PwmPin: 12, EnablePin: -1}, cfg.MotorCfgs[0])
	assert.Equal(t, MotorConfig{Name: "right", ChannelA: 5, ChannelB: 3, PwmPin: 13, EnablePin: 22}, cfg.MotorCfgs[1])
}

func TestGetServerConfigKeepsCredentialCase(t *testing.T) {
	t.Setenv(AppEnvBase+"CARKEY", "AbC123")
	t.Setenv(AppEnvBase+"CARPASSWORD", "Secret\r")
	t.Setenv(AppEnvBase+"SERVER", "RC.Example.com:8181")

	cfg := GetServerConfig()
	assert.Equal(t, "AbC123", cfg.Key)
	assert.Equal(t, "Secret", cfg.Password)
	assert.Equal(t, "rc.example.com:8181", cfg.Server)
	assert.Equal(t, DefaultStunServer, cfg.StunServer)
	assert.Equal(t, DefaultHealthInterval, cfg.HealthInterval)
}
