package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init replaces the global zap logger according to the running environment.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("failed to build zap logger -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}
