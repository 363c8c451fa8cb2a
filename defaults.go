package etiket

// registerDefaultFilters installs the baseline formatting set.
func registerDefaultFilters(e *Engine) {
	e.AddFilter("currency", filterCurrency)
	e.AddFilter("number", filterNumber)
	e.AddFilter("format", filterFormat)
	e.AddFilter("upper", filterUpper)
	e.AddFilter("lower", filterLower)
	e.AddFilter("capitalize", filterCapitalize)
	e.AddFilter("trim", filterTrim)
	e.AddFilter("truncate", filterTruncate)
	e.AddFilter("pad", filterPad)
	e.AddFilter("replace", filterReplace)
	e.AddFilter("default", filterDefault)
	e.AddFilter("abs", filterAbs)
	e.AddFilter("round", filterRound)
}
