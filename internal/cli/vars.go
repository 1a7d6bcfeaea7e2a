package cli

import (
	"github.com/allaithw/taskboard/internal/core"
	"github.com/allaithw/taskboard/internal/observability"
	"github.com/allaithw/taskboard/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.Config

	Board core.BoardManager
	Convs core.ConversationManager

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)
