package ports

import (
	"log/slog"
	"net/http"

	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

func MakeGetStandingsHandler(
	getStandings app.GetStandings,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newStandardMiddleware("standings", rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		date, err := parseDate(r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}

		if date != "" {
			ctx = reporting.AddExtrasToContext(ctx, map[string]string{"date": date})
			ctx = logging.AddMetaToContext(ctx, slog.String("date", date))
		}

		standings, err := getStandings(ctx, date)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		logging.FromContext(ctx).Info("Returning standings", "teams", len(standings))

		writeJSON(w, r, http.StatusOK, responseEnvelope{
			Success: true,
			Data:    standingsToResponse(standings),
		})
	}

	return middleware(handler)
}
