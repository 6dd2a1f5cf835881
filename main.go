package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"phonetle/assets"
	"phonetle/internal/config"
	"phonetle/internal/httpserver"
	"phonetle/internal/lexicon"
	"phonetle/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	lex, err := loadLexicon(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word data")
	}
	words, candidates, phonemes := lex.Stats()
	log.Info().Int("words", words).Int("candidates", candidates).Int("phonemes", phonemes).Msg("lexicon loaded")

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open round store")
	}
	defer closeStore()

	srv := httpserver.New(st, lex, cfg.Game.RevealDelay, cfg.Server.RequestTimeout)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("starting phonetle-go")
	if err := srv.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadLexicon reads the configured word files, falling back to the embedded
// defaults, and runs the chunked load with progress logging.
func loadLexicon(cfg *config.Config) (*lexicon.Lexicon, error) {
	dict, dictClose, err := openSource(cfg.Words.DictionaryFile, assets.Dictionary)
	if err != nil {
		return nil, err
	}
	defer dictClose()
	freq, freqClose, err := openSource(cfg.Words.FrequencyFile, assets.Frequency)
	if err != nil {
		return nil, err
	}
	defer freqClose()
	return lexicon.Load(dict, freq, lexicon.Options{
		BatchSize: cfg.Words.BatchSize,
		Yield:     runtime.Gosched,
		Progress: func(done, total int) {
			log.Debug().Int("done", done).Int("total", total).Msg("dictionary chunk")
		},
	})
}

// openSource opens a configured file or falls back to embedded data.
func openSource(path string, fallback func() (io.Reader, error)) (io.Reader, func(), error) {
	if path == "" {
		r, err := fallback()
		return r, func() {}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// openStore selects SQLite when a DSN is configured, memory otherwise.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	if dsn := cfg.Store.SQLiteDSN; dsn != "" {
		s, err := store.NewSQLite(dsn)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dsn", dsn).Msg("using sqlite round store")
		return s, func() { _ = s.Close() }, nil
	}
	return store.NewMemoryStore(), func() {}, nil
}
