package ports

import (
	"log/slog"
	"net/http"

	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

func MakeGetPlayerSeasonHandler(
	getPlayerSeason app.GetPlayerSeason,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newStandardMiddleware("player_season", rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		playerID, err := parseID(r.PathValue("playerID"))
		if err != nil {
			http.Error(w, "Invalid player id", http.StatusBadRequest)
			return
		}
		season, err := parseSeason(r.PathValue("season"))
		if err != nil {
			http.Error(w, "Invalid season", http.StatusBadRequest)
			return
		}

		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"playerId": r.PathValue("playerID"),
			"season":   season,
		})
		ctx = logging.AddMetaToContext(ctx,
			slog.Int64("playerId", playerID),
			slog.String("season", season),
		)

		playerSeason, pieceErrors, err := getPlayerSeason(ctx, playerID, season)
		if err != nil {
			// The app layer reports its own upstream failures
			writeDomainError(w, r, err)
			return
		}

		logging.FromContext(ctx).Info("Returning player season", "failedPieces", len(pieceErrors))

		writeJSON(w, r, http.StatusOK, responseEnvelope{
			Success: true,
			Data:    playerSeasonToResponse(playerSeason),
			Errors:  errorLabels(pieceErrors),
		})
	}

	return middleware(handler)
}
