package ports

import (
	"log/slog"
	"net/http"

	"github.com/brianzzs/GreenFiveInnings/internal/app"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
	"github.com/brianzzs/GreenFiveInnings/internal/reporting"
)

func MakeGetGamePreviewHandler(
	getGamePreview app.GetGamePreview,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := newStandardMiddleware("game_preview", rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		gamePk, err := parseID(r.PathValue("gamePk"))
		if err != nil {
			http.Error(w, "Invalid game pk", http.StatusBadRequest)
			return
		}

		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"gamePk": r.PathValue("gamePk"),
		})
		ctx = logging.AddMetaToContext(ctx, slog.Int64("gamePk", gamePk))

		preview, pieceErrors, err := getGamePreview(ctx, gamePk)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		logging.FromContext(ctx).Info("Returning game preview", "failedPieces", len(pieceErrors))

		writeJSON(w, r, http.StatusOK, responseEnvelope{
			Success: true,
			Data:    gamePreviewToResponse(preview),
			Errors:  errorLabels(pieceErrors),
		})
	}

	return middleware(handler)
}
