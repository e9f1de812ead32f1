package ports

import (
	"log/slog"
	"net/http"

	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

func MakeGetRosterHandler(
	getRosterWithStats app.GetRosterWithStats,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newStandardMiddleware("roster", rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		teamID, err := parseID(r.PathValue("teamID"))
		if err != nil {
			http.Error(w, "Invalid team id", http.StatusBadRequest)
			return
		}
		season, err := parseSeason(r.PathValue("season"))
		if err != nil {
			http.Error(w, "Invalid season", http.StatusBadRequest)
			return
		}

		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"teamId": r.PathValue("teamID"),
			"season": season,
		})
		ctx = logging.AddMetaToContext(ctx,
			slog.Int64("teamId", teamID),
			slog.String("season", season),
		)

		rosterWithStats, pieceErrors, err := getRosterWithStats(ctx, teamID, season)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		logging.FromContext(ctx).Info("Returning roster", "players", len(rosterWithStats.Roster.Entries), "failedPieces", len(pieceErrors))

		writeJSON(w, r, http.StatusOK, responseEnvelope{
			Success: true,
			Data:    rosterToResponse(rosterWithStats),
			Errors:  errorLabels(pieceErrors),
		})
	}

	return middleware(handler)
}
