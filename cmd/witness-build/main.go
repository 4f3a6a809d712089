// Command witness-build compiles the bridge contract into the ABI files
// embedded by the witness crate.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/swishlabsco/witness"
	"github.com/swishlabsco/witness/internal/artifact"
	"github.com/swishlabsco/witness/internal/config"
	wbmcp "github.com/swishlabsco/witness/internal/mcp"
	"github.com/swishlabsco/witness/internal/report"
	"github.com/swishlabsco/witness/internal/runner"
	"github.com/swishlabsco/witness/internal/solc"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("witness-build: ")

	// With no subcommand the tool behaves as a build step.
	cmd, args := "build", []string(nil)
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") {
		cmd, args = os.Args[1], os.Args[2:]
	} else if len(os.Args) > 1 {
		args = os.Args[1:]
	}

	var err error
	switch cmd {
	case "build":
		err = buildMain(args)
	case "abi":
		err = abiMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(witness.Version)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "witness-build: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: witness-build [command] [flags]

Commands:
  build       Compile the contract ABI with solc (default)
  abi         List the ABI artifacts in the output directory
  mcp         Start the MCP server
  version     Print the version
  help        Show this help

Use "witness-build <command> -h" for command-specific flags.`)
}

// --- build ---

func buildMain(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	verbose := fs.Bool("v", false, "log the solc command line")
	_ = fs.Parse(args)

	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	// solc diagnostics go straight to stderr so cargo shows them on failure.
	r := newRunner(loaded)
	r.Stderr = os.Stderr

	c := solc.New(loaded.Config, r)
	if *verbose {
		log.Printf("running %s", strings.Join(c.Argv(), " "))
	}

	return c.Build(context.Background(), os.Stdout)
}

// --- abi ---

func abiMain(args []string) error {
	fs := flag.NewFlagSet("abi", flag.ExitOnError)
	jsonFlag := fs.Bool("json", false, "output artifacts as JSON")
	_ = fs.Parse(args)

	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	c := solc.New(loaded.Config, nil)
	arts, err := artifact.Load(c.OutputPath(loaded.RepoRoot))
	if err != nil {
		return fmt.Errorf("abi: %w", err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(arts)
	}

	if len(arts) == 0 {
		fmt.Printf("No ABI files in %s. Run witness-build first.\n", c.OutputPath(loaded.RepoRoot))
		return nil
	}
	for _, a := range arts {
		fmt.Print(a.String())
	}
	return nil
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	recordDir := fs.String("records", "", "directory for build records (default: temp dir)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(wbmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := report.NewCachedStore(5, report.NewDiskStore(*recordDir))
	if err != nil {
		return err
	}

	server := wbmcp.NewServer(loaded.Config, newRunner(loaded), store)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// --- shared ---

func loadConfig() (*config.LoadResult, error) {
	workspace, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining workspace: %w", err)
	}
	loaded, err := config.Load(workspace)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return loaded, nil
}

func newRunner(loaded *config.LoadResult) *runner.Runner {
	return &runner.Runner{
		Workspace: loaded.RepoRoot,
		Timeout:   loaded.Config.Timeout(),
		MaxOutput: loaded.Config.MaxOutputBytes(),
	}
}
