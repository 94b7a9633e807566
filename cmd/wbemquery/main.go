// wbemquery runs query scenarios from a TOML definition against the
// in-memory fake service and prints the streamed rows. It exercises
// the full client path (connect, submit, iterate, typed extraction)
// and exits non-zero when a scenario fails or leaks handles.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	wbem "github.com/coreidcc/go-wbemcore"
)

func main() {
	configPath := flag.String("config", "wbemquery.toml", "path to the harness definition")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := initLogger(*verbose)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	svc, err := cfg.seed()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed service")
	}

	rt := wbem.NewRuntime(svc)
	defer rt.Shutdown()

	helper, err := wbem.Connect(svc, cfg.Namespace,
		wbem.WithRuntime(rt), wbem.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("connect failed")
	}

	failed := 0
	for i, sc := range cfg.Scenarios {
		if err := runScenario(helper, sc); err != nil {
			log.Error().Int("scenario", i).Err(err).Msg("scenario failed")
			failed++
		}
	}
	helper.Close()

	if n := svc.Live(); n != 0 {
		log.Error().Int("handles", n).Msg("native handles leaked")
		failed++
	}
	if failed > 0 {
		os.Exit(1)
	}
	log.Info().Int("scenarios", len(cfg.Scenarios)).Msg("all scenarios passed")
}

func initLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log := zerolog.New(output).With().Timestamp().Str("app", "wbemquery").Logger()
	if !verbose {
		log = log.Level(zerolog.InfoLevel)
	}
	return log
}

func runScenario(helper *wbem.Helper, sc scenarioConfig) error {
	var (
		result *wbem.Result
		err    error
		label  string
	)
	if sc.Query != "" {
		label = sc.Query
		result, err = helper.Query(sc.Query)
	} else {
		label = sc.Class
		result, err = helper.GetClass(sc.Class)
	}
	if err != nil {
		return err
	}
	defer result.Close()

	fmt.Printf("--- %s\n", label)

	rows := 0
	for ok := result.Valid(); ok; {
		if err := printRow(result); err != nil {
			return err
		}
		rows++
		ok, err = result.Next()
		if err != nil {
			return err
		}
	}

	if result.LastStatus().Failed() {
		return fmt.Errorf("stream stopped early: %s", result.LastStatus())
	}
	if sc.ExpectRows != nil && rows != *sc.ExpectRows {
		return fmt.Errorf("got %d rows, expected %d", rows, *sc.ExpectRows)
	}
	fmt.Printf("--- %d row(s)\n", rows)
	return nil
}

func printRow(result *wbem.Result) error {
	names, err := result.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		v, err := result.Variant(name)
		if err != nil {
			return err
		}
		text, err := v.String()
		v.Close()
		if err != nil {
			return err
		}
		fmt.Printf("%s=%s\n", name, text)
	}
	return nil
}
