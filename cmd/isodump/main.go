// Command isodump decodes and encodes ISO 8583 messages from the command line.
//
//	isodump decode 0100723A...          # hex wire message, or "-" for stdin
//	isodump encode message.yaml         # YAML {mti, fields}, or "-" for stdin
//
// The default ISO 8583:1987 table is used unless -config names a YAML or
// JSON registry file.
package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kr/pretty"
	"gopkg.in/yaml.v3"

	iso8583 "github.com/mkadit/iso8583codec"
	"github.com/mkadit/iso8583codec/internal/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "isodump: %v\n", err)
		os.Exit(1)
	}
}

// messageFile is the YAML form of a message for the encode command.
type messageFile struct {
	MTI    string         `yaml:"mti"`
	Fields map[int]string `yaml:"fields"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("isodump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "registry config file (.yaml, .yml or .json)")
	hexBitmap := fs.Bool("hex-bitmap", false, "bitmap is ASCII hex instead of binary")
	verbose := fs.Bool("v", false, "debug logging and a full dump of decoded messages")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := log.New(stderr, level)

	codec, err := newCodec(*configPath, logger)
	if err != nil {
		return err
	}
	if *hexBitmap {
		codec = iso8583.NewCodec(codec.Registry(), iso8583.WithBitmapEncoding(iso8583.BitmapHex), iso8583.WithLogger(logger))
	}

	if fs.NArg() != 2 {
		return errors.New("usage: isodump [flags] decode|encode <input|->")
	}
	switch fs.Arg(0) {
	case "decode":
		input, err := readInput(fs.Arg(1), stdin, false)
		if err != nil {
			return err
		}
		return decode(codec, input, stdout, *verbose)
	case "encode":
		input, err := readInput(fs.Arg(1), stdin, true)
		if err != nil {
			return err
		}
		return encode(codec, input, stdout)
	default:
		return fmt.Errorf("unknown command %q", fs.Arg(0))
	}
}

func newCodec(configPath string, logger *slog.Logger) (*iso8583.Codec, error) {
	if configPath == "" {
		return iso8583.NewCodec(iso8583.DefaultRegistry(), iso8583.WithLogger(logger)), nil
	}

	cfg, err := iso8583.LoadConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded registry", slog.String("name", cfg.Name), slog.Int("fields", len(cfg.Fields)))
	return iso8583.NewCodecFromConfig(cfg, iso8583.WithLogger(logger))
}

// readInput returns all of stdin when arg is "-", otherwise the named file or
// arg itself.
func readInput(arg string, stdin io.Reader, isFile bool) ([]byte, error) {
	switch {
	case arg == "-":
	case isFile:
		return os.ReadFile(arg)
	default:
		return []byte(arg), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

func decode(codec *iso8583.Codec, input []byte, stdout io.Writer, dump bool) error {
	raw, err := hex.DecodeString(strings.TrimSpace(string(input)))
	if err != nil {
		return fmt.Errorf("input is not hex: %w", err)
	}

	msg, err := codec.Decode(raw)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "MTI %s\n", msg.MTI)
	for _, f := range msg.PresentFields() {
		var desc string
		if rule, err := codec.Registry().RuleFor(f); err == nil {
			desc = rule.Description
		}
		fmt.Fprintf(stdout, "%3d %-45s %q\n", f, desc, msg.Fields[f])
	}
	if dump {
		fmt.Fprintf(stdout, "%# v\n", pretty.Formatter(msg))
	}
	return nil
}

func encode(codec *iso8583.Codec, input []byte, stdout io.Writer) error {
	var mf messageFile
	dec := yaml.NewDecoder(bytes.NewReader(input))
	dec.KnownFields(true)
	if err := dec.Decode(&mf); err != nil {
		return fmt.Errorf("parsing message: %w", err)
	}

	out, err := codec.Encode(iso8583.NewMessage(mf.MTI, mf.Fields))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%X\n", out)
	return nil
}
