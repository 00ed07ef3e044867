package commands

import "errors"

var errNoScript = errors.New("tui: --script (or --seed) is required to populate tables before browsing")
