package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd",
		"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret",
		"-t", "24", "-w", "12",
		"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint",
	}

	config := &Config{}
	config.LoadDefaults()
	parseFlags(config)

	assert.Equal(t, config.EndpointAddr, "127.0.0.1:9090")
	assert.Equal(t, config.DatabaseDSN, "db")
	assert.Equal(t, config.SecretKey, "secret")
	assert.Equal(t, config.TokenValidityDuration, 24*time.Hour)
	assert.Equal(t, config.BcryptCost, 12)
	assert.Equal(t, config.S3RootUser, "user")
	assert.Equal(t, config.S3RootPassword, "password")
	assert.Equal(t, config.S3Bucket, "bucket")
	assert.Equal(t, config.S3Region, "us-west-1")
	assert.Equal(t, config.S3BaseEndpoint, "http://endpoint")
}

func TestParseFlags_KeepsDefaultsWithoutArgs(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	parseFlags(config)

	assert.Equal(t, config.EndpointAddr, ":5000")
	assert.Equal(t, config.TokenValidityDuration, 30*24*time.Hour)
}
