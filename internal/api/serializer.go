package api

import (
	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// sonicSerializer replaces Echo's encoding/json serializer
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	return sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i)
}
