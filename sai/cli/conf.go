package cli

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/sai"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	// We locate sai configuration with an application-key of 'SAI' and
	// use NestedText-format (nt) for config-files
	konf := koanfadapter.New(k, "SAI", []string{"nt"})
	konf.InitDefaults()
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		sai.Exit(2)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		sai.Exit(2)
	}
	sai.Configuration = k // push the configuration to app-global scope
}

// mergeFlags loads the command line flags and maps them onto the keys the
// engine reads.
func mergeFlags(konf *koanfadapter.KConf) error {
	k := konf.Koanf()
	flags := rootCmd.PersistentFlags()
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return err
	}
	engine := map[string]interface{}{
		sai.KeyMaxCallDepth: k.Int("maxdepth"),
		sai.KeyPrecision:    k.Int("precision"),
	}
	if err := k.Load(confmap.Provider(engine, "."), nil); err != nil {
		return err
	}
	if logname := konf.GetString(sai.KeyLogfile); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return nil
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	if dest := konf.GetString("tracing.destination"); dest != "" {
		if !strings.Contains(dest, ":") {
			if dir := locateLogDir(); dir != "" {
				konf.Set("tracing.destination", "file://"+dir+"/"+dest)
			}
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracing.Infof(rootCmd.Long)
	return nil
}

// locateLogDir returns the directory for relative log file names.
func locateLogDir() string {
	paths, err := DefaultAppPaths("SAI")
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
		return ""
	}
	return paths.LogDir()
}
