package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	log  *zap.Logger
	once sync.Once
)

// L retourne le logger global (production par défaut, développement si APP_ENV=dev)
func L() *zap.Logger {
	once.Do(func() {
		var err error
		if os.Getenv("APP_ENV") == "dev" {
			log, err = zap.NewDevelopment()
		} else {
			log, err = zap.NewProduction()
		}
		if err != nil {
			log = zap.NewNop()
		}
	})
	return log
}

// Set remplace le logger global (tests : zap.NewNop ou zaptest)
func Set(l *zap.Logger) {
	once.Do(func() {})
	log = l
}

func Sync() {
	_ = L().Sync()
}
