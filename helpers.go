package main

import (
	log "github.com/sirupsen/logrus"

	"gitlab.com/ocr-extension/extension-server/internal/errortracking"
)

func capturingFatal(err error, fields ...errortracking.CaptureOption) {
	errortracking.CaptureErrWithStackTrace(err, fields...)
	log.WithError(err).Fatal("Extension files server stopped")
}
