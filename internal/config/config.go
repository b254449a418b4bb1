package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultListenAddr = ":8080"
const defaultChannelID = "PurpleApp"
const defaultChannelKey = "PurpleBankKey001"
const defaultSubmissionDelayMs = 1500
const defaultSubmissionTimeoutMs = 10000

type Config struct {
	ListenAddr        string
	ChannelID         string
	ChannelKey        string
	SubmissionDelay   time.Duration
	SubmissionTimeout time.Duration
}

func Load() (Config, error) {
	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	submissionDelay, err := durationMs("SUBMISSION_DELAY_MS", defaultSubmissionDelayMs)
	if err != nil {
		return Config{}, err
	}

	submissionTimeout, err := durationMs("SUBMISSION_TIMEOUT_MS", defaultSubmissionTimeoutMs)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ListenAddr:        listenAddr,
		ChannelID:         channelID,
		ChannelKey:        channelKey,
		SubmissionDelay:   submissionDelay,
		SubmissionTimeout: submissionTimeout,
	}, nil
}

func durationMs(key string, fallback int) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * time.Millisecond, nil
	}

	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}

	return time.Duration(ms) * time.Millisecond, nil
}
