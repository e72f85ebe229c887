package adapters

import (
	"testing"

	extismSDK "github.com/extism/go-sdk"
	"github.com/stretchr/testify/assert"
)

var (
	_ CompiledPlugin = (*sdkCompiledPlugin)(nil)
	_ PluginInstance = (*sdkPluginInstance)(nil)
)

func TestNewCompiledPluginAdapter(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewCompiledPluginAdapter(nil))

	plugin := &extismSDK.CompiledPlugin{}
	adapter := NewCompiledPluginAdapter(plugin)
	if assert.IsType(t, &sdkCompiledPlugin{}, adapter) {
		assert.Same(t, plugin, adapter.(*sdkCompiledPlugin).plugin)
	}
}
