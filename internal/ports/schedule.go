package ports

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

const (
	defaultScheduleDays = 30
	maxScheduleDays     = 365
)

func MakeGetScheduleHandler(
	getTeamSchedule app.GetTeamSchedule,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newStandardMiddleware("schedule", rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		teamID, err := parseID(r.PathValue("teamID"))
		if err != nil {
			http.Error(w, "Invalid team id", http.StatusBadRequest)
			return
		}

		days := defaultScheduleDays
		if rawDays := r.URL.Query().Get("days"); rawDays != "" {
			days, err = strconv.Atoi(rawDays)
			if err != nil || days < 1 || days > maxScheduleDays {
				http.Error(w, "Invalid days", http.StatusBadRequest)
				return
			}
		}

		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"teamId": r.PathValue("teamID"),
			"days":   strconv.Itoa(days),
		})
		ctx = logging.AddMetaToContext(ctx,
			slog.Int64("teamId", teamID),
			slog.Int("days", days),
		)

		games, pieceErrors, err := getTeamSchedule(ctx, teamID, days)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		logging.FromContext(ctx).Info("Returning schedule", "games", len(games), "failedPieces", len(pieceErrors))

		writeJSON(w, r, http.StatusOK, responseEnvelope{
			Success: true,
			Data:    gameSummariesToResponse(games),
			Errors:  errorLabels(pieceErrors),
		})
	}

	return middleware(handler)
}
