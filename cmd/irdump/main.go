package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-ir/ir"
	"github.com/wippyai/wasm-ir/wasm"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to wasm file")
		funcIdx     = flag.Int("func", -1, "Declared function index to dump (default: all)")
		dot         = flag.Bool("dot", false, "Emit Graphviz DOT instead of text")
		validate    = flag.Bool("validate", false, "Validate the module with wazero before building IR")
		verbose     = flag.Bool("v", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: irdump -wasm <file.wasm> [-func N] [-dot] [-validate]")
		fmt.Fprintln(os.Stderr, "       irdump -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		ir.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*wasmFile, *validate); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *funcIdx, *dot, *validate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile string, funcIdx int, dot, validate bool) error {
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if validate {
		if err := validateModule(data); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
	}

	m, err := wasm.ParseModule(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	env, err := ir.NewModuleEnv(m)
	if err != nil {
		return err
	}

	fmt.Printf("Module: %s\n", wasmFile)
	fmt.Printf("Types: %d, Imports: %d, Functions: %d declared\n\n",
		len(m.Types), len(m.Imports), len(m.Funcs))

	if funcIdx >= 0 {
		return dumpFunction(env, funcIdx, dot)
	}
	for i := range m.Funcs {
		if err := dumpFunction(env, i, dot); err != nil {
			return err
		}
	}
	return nil
}

// validateModule compiles the module with wazero, which performs full
// type and stack validation. Build errors after this point indicate IR
// construction limits, not malformed input.
func validateModule(data []byte) error {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	cm, err := r.CompileModule(ctx, data)
	if err != nil {
		return err
	}
	return cm.Close(ctx)
}

func dumpFunction(env *ir.ModuleEnv, declIdx int, dot bool) error {
	f, err := env.BuildDeclaredFunction(declIdx)
	if err != nil {
		return fmt.Errorf("function %d: %w", declIdx, err)
	}

	fmt.Printf(";; function %d%s %s\n", declIdx, funcLabel(f), signature(f))
	if dot {
		fmt.Println(ir.Dot(f))
	} else {
		fmt.Println(ir.Print(f))
	}
	return nil
}

func funcLabel(f *ir.Function) string {
	if f.Name == "" {
		return ""
	}
	return " (" + f.Name + ")"
}

func signature(f *ir.Function) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	results := make([]string, len(f.Results))
	for i, r := range f.Results {
		results[i] = r.String()
	}
	return "(" + strings.Join(params, " ") + ") -> (" + strings.Join(results, " ") + ")"
}
