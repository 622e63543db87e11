package classifier

import (
	"log/slog"

	"github.com/adikemitra/adike-go/internal/logging"
)

var logger *slog.Logger

func getLogger() *slog.Logger {
	if logger == nil {
		logger = logging.ForService("classifier")
	}
	return logger
}
