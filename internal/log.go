package internal

import (
	"sync"

	"go.uber.org/zap"
)

type logger struct {
	*zap.SugaredLogger
}

var (
	loggerOnce sync.Once
	Logger     *logger
	debugMode  = true
)

// SetDebug picks the development (true) or production (false) zap config.
// It only has an effect before the first call to GetLogger.
func SetDebug(debug bool) {
	debugMode = debug
}

func GetLogger() *logger {
	loggerOnce.Do(func() {
		Logger = initLogger(debugMode)
	})
	return Logger
}

func initLogger(debug bool) *logger {
	var base *zap.Logger
	var err error
	if debug {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		base = zap.NewNop()
	}
	return &logger{
		SugaredLogger: base.Sugar(),
	}
}
