package api

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
)

// signPath adds the developer id to params and returns the request URI with its
// signature. PTV signs the path and query (devid included) with HMAC-SHA1 of the
// API key, as uppercase hex.
func signPath(path string, params url.Values, devID, apiKey string) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("devid", devID)

	uri := path + "?" + params.Encode()

	mac := hmac.New(sha1.New, []byte(apiKey))
	mac.Write([]byte(uri))
	signature := strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))

	return uri + "&signature=" + signature
}
