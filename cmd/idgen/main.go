// idgen CLI - command-line tool for snowflake/ULID generation and
// inspection.
//
// Usage:
//
//	idgen generate [flags]       Generate IDs
//	idgen parse <id>             Parse and inspect an ID
//	idgen encode <id> <format>   Convert ID to a different format
//	idgen validate <id>          Validate an ID's structure
//	idgen bench                  Run performance benchmarks
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/arjunv/idgen"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "generate", "gen", "g":
		cmdGenerate(os.Args[2:])
	case "parse", "p":
		cmdParse(os.Args[2:])
	case "encode", "enc", "e":
		cmdEncode(os.Args[2:])
	case "validate", "val", "v":
		cmdValidate(os.Args[2:])
	case "bench", "benchmark", "b":
		cmdBench(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("idgen CLI version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `idgen CLI - snowflake and ULID identifier generation

Usage:
  idgen <command> [flags]

Commands:
  generate, gen, g      Generate IDs
  parse, p              Parse and inspect an ID
  encode, enc, e        Convert an ID between formats
  validate, val, v      Validate an ID's structure
  bench, b              Run performance benchmarks
  version               Show version information
  help                  Show this help message

Examples:
  idgen generate --family snowflake --machine 42
  idgen generate --family ulid --count 10 --format hex
  idgen parse --family snowflake 1234567890123456789
  idgen encode --family snowflake 1234567890123456789 base62
  idgen bench --family ulid --duration 5s

For detailed help on a command:
  idgen <command> --help

`)
}

// ----------------------------------------------------------------------
// generate
// ----------------------------------------------------------------------

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	family := fs.String("family", "snowflake", "ID family: snowflake, ulid")
	count := fs.Int("count", 1, "Number of IDs to generate")
	machineID := fs.Int64("machine", 0, "Machine ID (snowflake only)")
	shell := fs.String("shell", "mutex", "Concurrency shell: single, mutex, atomic (snowflake), single, mutex (ulid)")
	format := fs.String("format", "decimal", "Output format: decimal, base36, base58, base62, hex, binary (snowflake); decimal, hex, base64, base64url (ulid)")
	jsonOutput := fs.Bool("json", false, "Output as JSON")
	fs.Parse(args)

	ctx := context.Background()
	start := time.Now()

	switch *family {
	case "snowflake":
		shellInstance, err := buildSnowflakeShell(*shell, *machineID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating generator: %v\n", err)
			os.Exit(1)
		}
		adapter := idgen.NewAsyncSnowflakeAdapter(shellInstance, nil)
		ids, err := idgen.GenerateSnowflakeBatch(ctx, adapter, *count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error generating: %v\n", err)
			os.Exit(1)
		}
		duration := time.Since(start)
		if *jsonOutput {
			outputSnowflakeJSON(ids, duration, *machineID)
			return
		}
		for _, id := range ids {
			fmt.Println(formatSnowflakeID(id, *format))
		}
	case "ulid":
		shellInstance, err := buildUlidShell(*shell)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating generator: %v\n", err)
			os.Exit(1)
		}
		adapter := idgen.NewAsyncUlidAdapter(shellInstance, nil)
		ids, err := idgen.GenerateUlidBatch(ctx, adapter, *count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error generating: %v\n", err)
			os.Exit(1)
		}
		for _, id := range ids {
			fmt.Println(formatUlidID(id, *format))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown family: %s\n", *family)
		os.Exit(1)
	}
}

func formatSnowflakeID(id idgen.SnowflakeID, format string) string {
	switch strings.ToLower(format) {
	case "base36", "b36":
		return id.Base36()
	case "base58", "b58":
		return id.Base58()
	case "base62", "b62":
		return id.Base62()
	case "hex", "x":
		return id.Hex()
	case "binary", "bin":
		return id.Base2()
	default:
		return id.String()
	}
}

func formatUlidID(id idgen.UlidID, format string) string {
	switch strings.ToLower(format) {
	case "hex", "x":
		return id.Hex()
	case "base64", "b64":
		return id.Base64()
	case "base64url":
		return id.Base64URL()
	default:
		return id.String()
	}
}

func outputSnowflakeJSON(ids []idgen.SnowflakeID, duration time.Duration, machineID int64) {
	type idInfo struct {
		ID        string `json:"id"`
		Base62    string `json:"base62"`
		Hex       string `json:"hex"`
		Timestamp int64  `json:"timestamp_ms"`
		MachineID uint64 `json:"machine_id"`
		Sequence  uint64 `json:"sequence"`
	}
	type output struct {
		Count      int       `json:"count"`
		MachineID  int64     `json:"machine_id"`
		Duration   string    `json:"duration"`
		RatePerSec float64   `json:"rate_per_sec"`
		IDs        []idInfo  `json:"ids"`
	}

	infos := make([]idInfo, len(ids))
	for i, id := range ids {
		ts, m, seq := id.Components(idgen.LayoutTwitter)
		infos[i] = idInfo{
			ID: id.String(), Base62: id.Base62(), Hex: id.Hex(),
			Timestamp: int64(ts), MachineID: m, Sequence: seq,
		}
	}
	rate := float64(len(ids)) / duration.Seconds()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(output{Count: len(ids), MachineID: machineID, Duration: duration.String(), RatePerSec: rate, IDs: infos})
}

// ----------------------------------------------------------------------
// parse / encode / validate
// ----------------------------------------------------------------------

func parseSnowflakeFlexible(s string) (idgen.SnowflakeID, error) {
	if id, err := idgen.ParseSnowflakeString(s); err == nil {
		return id, nil
	}
	if id, err := idgen.ParseSnowflakeBase62(s); err == nil {
		return id, nil
	}
	if id, err := idgen.ParseSnowflakeBase58(s); err == nil {
		return id, nil
	}
	return idgen.ParseSnowflakeHex(s)
}

func cmdParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	family := fs.String("family", "snowflake", "ID family: snowflake, ulid")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: idgen parse [--family snowflake|ulid] <id>\n")
		os.Exit(1)
	}

	switch *family {
	case "snowflake":
		id, err := parseSnowflakeFlexible(rest[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: unable to parse %q\n", rest[0])
			os.Exit(1)
		}
		ts, machineID, seq := id.Components(idgen.LayoutTwitter)
		fmt.Printf("Snowflake ID: %s\n\n", id)
		fmt.Printf("Components (LayoutTwitter):\n")
		fmt.Printf("  Timestamp:  %d ms since epoch\n", ts)
		fmt.Printf("  MachineID:  %d\n", machineID)
		fmt.Printf("  Sequence:   %d\n", seq)
		fmt.Printf("\nEncodings:\n")
		fmt.Printf("  Decimal:    %s\n", id.String())
		fmt.Printf("  Base62:     %s\n", id.Base62())
		fmt.Printf("  Base58:     %s\n", id.Base58())
		fmt.Printf("  Hex:        %s\n", id.Hex())
		fmt.Printf("\nValid (LayoutTwitter): %v\n", id.IsValid(idgen.LayoutTwitter))
	case "ulid":
		id, err := parseUlidHexArg(rest[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		ts, random := id.Components(idgen.LayoutULID)
		fmt.Printf("ULID: %s\n\n", id)
		fmt.Printf("Components (LayoutULID):\n")
		fmt.Printf("  Timestamp:  %d ms since epoch\n", ts)
		fmt.Printf("  Random:     %s\n", random)
		fmt.Printf("\nHex: %s\n", id.Hex())
	default:
		fmt.Fprintf(os.Stderr, "unknown family: %s\n", *family)
		os.Exit(1)
	}
}

func parseUlidHexArg(s string) (idgen.UlidID, error) {
	var id idgen.UlidID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return idgen.UlidID{}, err
	}
	return id, nil
}

func cmdEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	family := fs.String("family", "snowflake", "ID family: snowflake, ulid")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: idgen encode [--family snowflake|ulid] <id> <format>\n")
		os.Exit(1)
	}
	switch *family {
	case "snowflake":
		id, err := parseSnowflakeFlexible(rest[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: unable to parse %q\n", rest[0])
			os.Exit(1)
		}
		fmt.Println(formatSnowflakeID(id, rest[1]))
	case "ulid":
		id, err := parseUlidHexArg(rest[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(formatUlidID(id, rest[1]))
	default:
		fmt.Fprintf(os.Stderr, "unknown family: %s\n", *family)
		os.Exit(1)
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	family := fs.String("family", "snowflake", "ID family: snowflake, ulid")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: idgen validate [--family snowflake|ulid] <id>\n")
		os.Exit(1)
	}
	switch *family {
	case "snowflake":
		id, err := parseSnowflakeFlexible(rest[0])
		if err != nil {
			fmt.Printf("INVALID: unable to parse %q\n", rest[0])
			os.Exit(1)
		}
		if !id.IsValid(idgen.LayoutTwitter) {
			fmt.Printf("INVALID: reserved bits are set under LayoutTwitter\n")
			os.Exit(1)
		}
		fmt.Printf("VALID\n")
	case "ulid":
		id, err := parseUlidHexArg(rest[0])
		if err != nil {
			fmt.Printf("INVALID: %v\n", err)
			os.Exit(1)
		}
		if !id.IsValid(idgen.LayoutULID) {
			fmt.Printf("INVALID: reserved bits are set under LayoutULID\n")
			os.Exit(1)
		}
		fmt.Printf("VALID\n")
	default:
		fmt.Fprintf(os.Stderr, "unknown family: %s\n", *family)
		os.Exit(1)
	}
}

// ----------------------------------------------------------------------
// bench
// ----------------------------------------------------------------------

func buildSnowflakeShell(shell string, machineID int64) (interface{ NextID() idgen.IDResult }, error) {
	cfg := idgen.DefaultSnowflakeConfig(machineID)
	switch shell {
	case "single":
		return idgen.NewSingleOwnerSnowflakeGenerator(cfg)
	case "atomic":
		return idgen.NewAtomicSnowflakeGenerator(cfg)
	default:
		return idgen.NewMutexSnowflakeGenerator(cfg)
	}
}

func buildUlidShell(shell string) (interface{ NextID() idgen.UlidIDResult }, error) {
	cfg := idgen.DefaultUlidConfig()
	if shell == "single" {
		return idgen.NewSingleOwnerUlidGenerator(cfg)
	}
	return idgen.NewMutexUlidGenerator(cfg)
}

func cmdBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	family := fs.String("family", "snowflake", "ID family: snowflake, ulid")
	duration := fs.Duration("duration", 3*time.Second, "Benchmark duration")
	machineID := fs.Int64("machine", 0, "Machine ID (snowflake only)")
	shell := fs.String("shell", "mutex", "Concurrency shell")
	fs.Parse(args)

	fmt.Printf("Running %s benchmark (duration: %v, shell: %s)\n\n", *family, *duration, *shell)
	deadline := time.Now().Add(*duration)
	ctx := context.Background()

	switch *family {
	case "snowflake":
		shellInstance, err := buildSnowflakeShell(*shell, *machineID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		adapter := idgen.NewAsyncSnowflakeAdapter(shellInstance, nil)
		count := 0
		start := time.Now()
		for time.Now().Before(deadline) {
			if _, err := adapter.NextID(ctx); err != nil {
				break
			}
			count++
		}
		elapsed := time.Since(start)
		fmt.Printf("Generated %d IDs in %v (%.0f IDs/sec)\n", count, elapsed, float64(count)/elapsed.Seconds())
	case "ulid":
		shellInstance, err := buildUlidShell(*shell)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		adapter := idgen.NewAsyncUlidAdapter(shellInstance, nil)
		count := 0
		start := time.Now()
		for time.Now().Before(deadline) {
			if _, err := adapter.NextID(ctx); err != nil {
				break
			}
			count++
		}
		elapsed := time.Since(start)
		fmt.Printf("Generated %d IDs in %v (%.0f IDs/sec)\n", count, elapsed, float64(count)/elapsed.Seconds())
	default:
		fmt.Fprintf(os.Stderr, "unknown family: %s\n", *family)
		os.Exit(1)
	}
}
