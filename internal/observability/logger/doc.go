// Package logger provee un singleton de zap para toda la aplicación.
//
// Uso típico:
//
//	logger.Init(logger.Config{Env: "prod", Level: "info"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Component("otp"), logger.Op("Issue"))
//	log.Info("otp issued", logger.Email(email))
//
// Los middlewares HTTP inyectan un logger "scoped" (request_id, method, path)
// en el contexto; logger.From(ctx) lo recupera o cae al singleton.
package logger
