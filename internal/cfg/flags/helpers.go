// Package cfgflags handles Cobra/Viper flags.
package cfgflags

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bind registers the flag under key in viper.
func bind(fs *pflag.FlagSet, key string) error {
	return viper.BindPFlag(key, fs.Lookup(key))
}

// bindAll binds every key, stopping at the first failure.
func bindAll(fs *pflag.FlagSet, keys ...string) error {
	for _, k := range keys {
		if err := bind(fs, k); err != nil {
			return err
		}
	}
	return nil
}
