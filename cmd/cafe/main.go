package main

import (
	"bitbucket.org/sotavant/cafe-backend/internal/logger"
	"bitbucket.org/sotavant/cafe-backend/internal/store/sqlite"
	"context"
	"go.uber.org/zap"
	"net/http"
	"strings"
)

func main() {
	parseFlags()
	if err := run(); err != nil {
		logger.Log.Error("cannot start server", zap.Error(err))
		panic(err)
	}
}

func gzipMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ow := w

		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportGzip := strings.Contains(acceptEncoding, "gzip")

		if supportGzip {
			cw := newCompressWriter(w)
			ow = cw
			defer func(cw *compressWriter) {
				if err := cw.Close(); err != nil {
					logger.Log.Debug("compressWriterError", zap.Error(err))
				}
			}(cw)
		}

		contentEncoding := r.Header.Get("Content-Encoding")

		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				logger.Log.Debug("newCompressReaderError", zap.Error(err))
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = cr
			defer func(cr *compressReader) {
				if err := cr.Close(); err != nil {
					logger.Log.Debug("closeCompressReaderError", zap.Error(err))
				}
			}(cr)
		}

		h.ServeHTTP(ow, r)
	})
}

func run() error {
	if err := logger.Initialize(flagLogLevel); err != nil {
		return err
	}

	ctx := context.Background()

	s, err := sqlite.New(ctx, flagDatabaseURI)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Bootstrap(ctx); err != nil {
		return err
	}
	logger.Log.Info("Database ready", zap.String("path", flagDatabaseURI))

	appInstance := newApp(s)

	logger.Log.Info("Running server",
		zap.String("address", flagRunAddr),
		zap.String("static", flagStaticDir),
	)

	return http.ListenAndServe(flagRunAddr,
		logger.RequestLogger(gzipMiddleware(appInstance.routes(flagStaticDir))))
}
