package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID はAPIが返す識別子。中身は見ない。
// 文字列でも数値でも受け付ける（サーバーによってはint64のまま返す）。
type ID string

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be string or number: %s", b)
	}
	*id = ID(n.String())
	return nil
}
