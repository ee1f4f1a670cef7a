package propval

import (
	"strings"

	"github.com/spf13/afero"

	"dbrx/dbrxerr"
)

// FS is the filesystem used by LoadFile and StoreFile. It defaults to
// the real OS filesystem but can be swapped for an in-memory one in
// tests, the way afero.Fs is used elsewhere for filesystem access.
var FS afero.Fs = afero.NewOsFs()

// LoadFile reads and parses a PropVal from path. Only the ".json"
// extension is currently supported, mirroring
// _examples/original_source/src/Props.cxx's PropVal::fromFile.
func LoadFile(path string) (PropVal, error) {
	if !strings.HasSuffix(path, ".json") {
		return PropVal{}, dbrxerr.Configurationf("unsupported input file type for PropVal: %s", path)
	}
	data, err := afero.ReadFile(FS, path)
	if err != nil {
		return PropVal{}, dbrxerr.Configurationf("reading %s", path).Wrap(err)
	}
	v, err := FromJSON(data)
	if err != nil {
		return PropVal{}, dbrxerr.Configurationf("parsing %s", path).Wrap(err)
	}
	return v, nil
}

// StoreFile serializes v as JSON and writes it to path, trailing it
// with a newline. Only the ".json" extension is currently supported.
func StoreFile(v PropVal, path string) error {
	if !strings.HasSuffix(path, ".json") {
		return dbrxerr.Configurationf("unsupported output file type for PropVal: %s", path)
	}
	data, err := v.ToJSON()
	if err != nil {
		return dbrxerr.Configurationf("serializing %s", path).Wrap(err)
	}
	data = append(data, '\n')
	if err := afero.WriteFile(FS, path, data, 0644); err != nil {
		return dbrxerr.Configurationf("writing %s", path).Wrap(err)
	}
	return nil
}
