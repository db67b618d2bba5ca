package config

import (
	"github.com/spf13/cast"
)

// numericFuncsMap are the functions available in the configuration files
// templates, like {{ mulf 48 .Env.DENSITY }} to compute a size in pixels.
var numericFuncsMap = map[string]interface{}{
	"add": func(i ...interface{}) int64 {
		var a int64
		for _, b := range i {
			a += cast.ToInt64(b)
		}
		return a
	},
	"sub": func(a, b interface{}) int64 { return cast.ToInt64(a) - cast.ToInt64(b) },
	"div": func(a, b interface{}) int64 {
		d := cast.ToInt64(b)
		if d == 0 {
			return 0
		}
		return cast.ToInt64(a) / d
	},
	"mod": func(a, b interface{}) int64 {
		d := cast.ToInt64(b)
		if d == 0 {
			return 0
		}
		return cast.ToInt64(a) % d
	},
	"mul": func(a interface{}, v ...interface{}) int64 {
		val := cast.ToInt64(a)
		for _, b := range v {
			val = val * cast.ToInt64(b)
		}
		return val
	},
	"mulf": func(a interface{}, v ...interface{}) float64 {
		val := cast.ToFloat64(a)
		for _, b := range v {
			val = val * cast.ToFloat64(b)
		}
		return val
	},
	"default": func(def, v interface{}) interface{} {
		if s, ok := v.(string); ok && s == "" {
			return def
		}
		if v == nil {
			return def
		}
		return v
	},
}
