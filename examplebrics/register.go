package examplebrics

import "dbrx/bric"

// registerAll installs every class this package provides into the
// dynamic bric registry, so "type" tags in configuration can name
// them: "Const", "LinCalib", "Sequence" and "Sum".
func registerAll() {
	bric.Register("Const", newConst)
	bric.Register("LinCalib", newLinCalib)
	bric.Register("Sequence", newSequence)
	bric.Register("Sum", newSum)
}
