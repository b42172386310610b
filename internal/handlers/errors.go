package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func respondWithError(w http.ResponseWriter, logger *zap.Logger, status int, userMsg string, err error) {
	if err != nil {
		logger.Error(userMsg, zap.Error(err))
	}
	http.Error(w, userMsg, status)
}
