package main

import (
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	is := is.New(t)
	is.Equal(parseLogLevel("debug"), zerolog.DebugLevel)
	is.Equal(parseLogLevel("WARN"), zerolog.WarnLevel)
	is.Equal(parseLogLevel("error"), zerolog.ErrorLevel)
	is.Equal(parseLogLevel("verbose"), zerolog.InfoLevel)
	is.Equal(parseLogLevel(""), zerolog.InfoLevel)
}
