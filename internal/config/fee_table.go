// README: Fee table file loader (YAML/JSON/TOML via viper).
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFeeTable reads a file of the form
//
//	rates:
//	  cycle-rider: {base_fee: 30, per_km_fee: 5}
//
// and returns the rates keyed by mechanism.
func LoadFeeTable(path string) (map[string]FeeRate, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read fee table %s: %w", path, err)
	}

	var file struct {
		Rates map[string]FeeRate `mapstructure:"rates"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decode fee table %s: %w", path, err)
	}
	for m, r := range file.Rates {
		if r.BaseFee < 0 || r.PerKmFee < 0 {
			return nil, fmt.Errorf("fee table %s: negative fee for %q", path, m)
		}
	}
	return file.Rates, nil
}
