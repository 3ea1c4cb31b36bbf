/*
Package config holds process-wide configuration constants and the default
configuration map for ishlang, in the same style the teacher project uses
for its own config package.
*/
package config

import (
	"fmt"
	"strconv"

	"github.com/krotik/common/errorutil"
)

/*
SourceExtension is the file extension used for ishlang source modules.
*/
const SourceExtension = ".ish"

/*
SearchPathEnvVar is the process-environment variable holding a ':'-delimited
list of additional module search-path directories.
*/
const SearchPathEnvVar = "ISHLANG_MODULE_PATH"

/*
Known configuration options for ishlang.
*/
const (
	MaxTimeItReps = "MaxTimeItReps"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	MaxTimeItReps: 1000,
}

/*
Config is the actual configuration in use.
*/
var Config map[string]interface{}

func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}
	Config = data
}

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
