// Package cfgfiles handles configuration files.
package cfgfiles

import (
	"fmt"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
	"vidgrab/internal/validation"

	"github.com/spf13/viper"
)

// LoadConfigFile loads in the preset configuration file. Flags set on the command line keep precedence.
func LoadConfigFile(file string) error {
	if _, err := validation.ValidateFile(file); err != nil {
		return fmt.Errorf(errconsts.ConfigFileLoadFail, file, err)
	}

	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf(errconsts.ConfigFileLoadFail, file, err)
	}

	logger.Pl.I("Loaded config file %q", viper.ConfigFileUsed())
	return nil
}
