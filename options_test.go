package timelock

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestOptionsStream(t *testing.T) {
	cases := map[string]struct {
		json    string
		wantErr *errors.Error
		exp     []struct{ Key int }
		empty   bool
	}{
		"happy path": {
			json: `{"list": [{"key": 1}, {"key": 2}]}`,
			exp: []struct{ Key int }{
				{Key: 1},
				{Key: 2},
			},
			wantErr: errors.ErrEmpty,
		},
		"empty list": {
			json:    `{}`,
			wantErr: errors.ErrEmpty,
			empty:   true,
		},
		"wrong value": {
			json: `{"list": [{"key": "dasdasas"}]}`,
			exp: []struct{ Key int }{
				{},
			},
			wantErr: errors.ErrInput,
		},
		"wrong body": {
			json:    `{"list": "adasda"}`,
			wantErr: errors.ErrInput,
			empty:   true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			var s struct{ Key int }
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))
			f, err := o.Stream("list")
			if tc.empty {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			for _, e := range tc.exp {
				err = f(&s)
				if err != nil {
					assert.IsErr(t, tc.wantErr, err)
					return
				}
				assert.Equal(t, e, s)
			}

			assert.IsErr(t, tc.wantErr, f(&s))
			assert.IsErr(t, errors.ErrState, f(&s))
		})
	}
}

func TestReadOptions(t *testing.T) {
	o := Options{"conf": json.RawMessage(`{"name": "tlk"}`)}

	var conf struct{ Name string }
	assert.Nil(t, o.ReadOptions("conf", &conf))
	assert.Equal(t, "tlk", conf.Name)

	// missing key is not an error
	assert.Nil(t, o.ReadOptions("missing", &conf))
	assert.Equal(t, "tlk", conf.Name)

	o["bad"] = json.RawMessage(`[1, 2]`)
	assert.IsErr(t, errors.ErrInput, o.ReadOptions("bad", &conf))
}
