package main

import (
	"fmt"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/axiomesh/axiom-kit/log"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/urfave/cli/v2"

	"github.com/meshdao/governance"
	"github.com/meshdao/governance/core"
	"github.com/meshdao/governance/repo"
)

func start(ctx *cli.Context) error {
	p, err := getRootPath(ctx)
	if err != nil {
		return err
	}
	r, err := repo.Load(p)
	if err != nil {
		return err
	}

	err = log.Initialize(
		log.WithReportCaller(r.Config.Log.ReportCaller),
		log.WithPersist(true),
		log.WithFilePath(filepath.Join(r.Config.RepoRoot, repo.LogsDirName)),
		log.WithFileName(r.Config.Log.Filename),
		log.WithMaxAge(r.Config.Log.MaxAge),
		log.WithRotationTime(r.Config.Log.RotationTime),
	)
	if err != nil {
		return fmt.Errorf("log initialize: %w", err)
	}

	printVersion()

	var client *ethclient.Client
	dial := func(attempt uint) error {
		client, err = ethclient.DialContext(ctx.Context, r.Config.DialUrl)
		return err
	}
	if err := retry.Retry(dial, strategy.Limit(5), strategy.Backoff(backoff.Fibonacci(5*time.Second))); err != nil {
		return fmt.Errorf("dial %s: %w", r.Config.DialUrl, err)
	}

	engine, err := core.NewEngine(ctx.Context, r.Config, client)
	if err != nil {
		return fmt.Errorf("new governance engine error: %w", err)
	}

	srv := newQueryServer(engine, r.Config.QueryAddr)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			engine.Logger.Errorf("query server stopped: %s", err)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	handleShutdown(engine, &wg)

	fmt.Println("=============Governance ledger is ready=============")

	wg.Wait()

	return nil
}

func printVersion() {
	fmt.Printf("Governance daemon version: %s-%s-%s\n", governance.CurrentVersion, governance.CurrentBranch, governance.CurrentCommit)
	fmt.Printf("App build date: %s\n", governance.BuildDate)
	fmt.Printf("System version: %s\n", governance.Platform)
	fmt.Printf("Golang version: %s\n", governance.GoVersion)
	fmt.Println()
}

func handleShutdown(engine *core.Engine, wg *sync.WaitGroup) {
	var stop = make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGTERM)
	signal.Notify(stop, syscall.SIGINT)

	go func() {
		<-stop
		fmt.Println("received interrupt signal, shutting down...")
		if err := engine.Stop(); err != nil {
			panic(err)
		}
		wg.Done()
		os.Exit(0)
	}()
}
