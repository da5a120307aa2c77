package plugin

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/ipfs/kubo/plugin"
	"github.com/ipld/go-ipld-prime/codec"
	"github.com/ipld/go-ipld-prime/multicodec"

	"github.com/vulcanize/go-codec-lceth/header"
	"github.com/vulcanize/go-codec-lceth/tx"
	"github.com/vulcanize/go-codec-lceth/tx_list"
)

var log = logging.Logger("lceth/plugin")

// Plugins is exported list of plugins that will be loaded
var Plugins = []plugin.Plugin{
	&ethIPLDPlugin{},
}

type codecPair struct {
	code    uint64
	encoder codec.Encoder
	decoder codec.Decoder
}

// codecs maps the multicodec names this plugin can register to their codecs
var codecs = map[string]codecPair{
	"eth-block":   {header.MultiCodecType, header.Encode, header.Decode},
	"eth-tx":      {tx.MultiCodecType, tx.Encode, tx.Decode},
	"eth-tx-list": {tx_list.MultiCodecType, tx_list.Encode, tx_list.Decode},
}

type ethIPLDPlugin struct {
	enabled []string
}

var _ plugin.PluginIPLD = (*ethIPLDPlugin)(nil)

// Name satisfies the Plugin interface
func (*ethIPLDPlugin) Name() string {
	return "ipld-lc-eth"
}

// Version satisfies the Plugin interface
func (*ethIPLDPlugin) Version() string {
	return "0.0.1"
}

// Init satisfies the Plugin interface. The optional plugin config selects which
// codecs to register: {"Codecs": ["eth-block", "eth-tx"]}
func (p *ethIPLDPlugin) Init(env *plugin.Environment) error {
	enabled, err := parseConfig(env.Config)
	if err != nil {
		return err
	}
	p.enabled = enabled
	return nil
}

// Register satisfies the PluginIPLD interface
func (p *ethIPLDPlugin) Register(reg multicodec.Registry) error {
	names := p.enabled
	if names == nil {
		names = defaultCodecs()
	}
	for _, name := range names {
		c := codecs[name]
		reg.RegisterEncoder(c.code, c.encoder)
		reg.RegisterDecoder(c.code, c.decoder)
		log.Debugw("registered codec", "name", name, "code", fmt.Sprintf("0x%x", c.code))
	}
	return nil
}

func defaultCodecs() []string {
	return []string{"eth-block", "eth-tx", "eth-tx-list"}
}

func parseConfig(cfg interface{}) ([]string, error) {
	if cfg == nil {
		return nil, nil
	}
	m, ok := cfg.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s plugin config must be an object, got %T", "ipld-lc-eth", cfg)
	}
	raw, ok := m["Codecs"]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s plugin config Codecs must be a list, got %T", "ipld-lc-eth", raw)
	}
	names := make([]string, 0, len(list))
	for _, v := range list {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("codec names must be strings, got %T", v)
		}
		if _, ok := codecs[name]; !ok {
			return nil, fmt.Errorf("unknown codec %q", name)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		log.Warn("plugin config enables no codecs")
	}
	return names, nil
}
