// Command circlefavicon turns public/favicon.jpg into circular favicons
// (16, 32, 192 and 512 px) and a 32×32 favicon.ico in public/.
package main

import (
	"os"

	"github.com/setanarut/circlefavicon"
	"go.uber.org/zap"
)

func main() {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)

	opt := circlefavicon.DefaultOptions()
	opt.Logger = logger

	if _, err := circlefavicon.Generate(opt); err != nil {
		logger.Error("favicon generation failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
