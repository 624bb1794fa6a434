package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// HumaMiddleware gives every API request its own LogData, reachable from the
// handler through GetLogData, and logs it once the handler returns.
func HumaMiddleware(log *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		operationID := "unknown"
		if op := ctx.Operation(); op != nil {
			operationID = op.OperationID
		}

		logData := NewLogData(log)
		logData.AddData("operation", operationID)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)
		log.Infof("Handler.%v.Start", operationID)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataKey{}, logData))
		endTimer()

		logData.Log().Infof("Handler.%v.Complete", operationID)
	}
}
