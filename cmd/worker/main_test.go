package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mallops/mallops/internal/app"
	_ "github.com/mallops/mallops/internal/testing/guard"
)

func TestMainReturnsInTestMode(t *testing.T) {
	require.True(t, app.InTestMode())
	main()
}
