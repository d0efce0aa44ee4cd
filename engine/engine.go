// Package engine evaluates Starlark node scripts. A node script binds the
// global `nodes` to a list of (lat, lon) pairs; it may read the predeclared
// parameters it is given, such as the window width and height.
package engine

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"scroll-map/log"

	"go.starlark.net/starlark"
)

// NodesGlobal is the global a node script must define.
const NodesGlobal = "nodes"

// ComputeInputHash creates a hash of a script and its parameters for the cache key.
func ComputeInputHash(name, src string, params map[string]interface{}) string {
	data := map[string]interface{}{
		"name":   name,
		"src":    src,
		"params": params,
	}
	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}

// Runner evaluates node scripts and remembers results for identical inputs.
type Runner struct {
	mu    sync.Mutex
	cache map[string][][2]float64
}

func NewRunner() *Runner {
	return &Runner{cache: make(map[string][][2]float64)}
}

// Nodes runs src and returns its `nodes` as (lat, lon) pairs.
func (r *Runner) Nodes(name, src string, params map[string]interface{}) ([][2]float64, error) {
	key := ComputeInputHash(name, src, params)
	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		log.InfoLog.Printf("[%s] cache hit, %d nodes", name, len(cached))
		return cached, nil
	}
	r.mu.Unlock()

	nodes, err := RunNodeScript(name, src, params)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = nodes
	r.mu.Unlock()
	return nodes, nil
}

// RunNodeScript executes a node script without caching.
func RunNodeScript(name, src string, params map[string]interface{}) ([][2]float64, error) {
	globals, err := ExecuteStarlark(name, src, params)
	if err != nil {
		return nil, err
	}
	v, ok := globals[NodesGlobal]
	if !ok {
		return nil, fmt.Errorf("%s: script does not define %q", name, NodesGlobal)
	}
	return toPairs(name, v)
}

// ExecuteStarlark executes a script with provided parameters and returns the
// globals it defines.
func ExecuteStarlark(threadName string, script string, params map[string]interface{}) (starlark.StringDict, error) {
	thread := &starlark.Thread{
		Name:  threadName,
		Print: func(_ *starlark.Thread, msg string) { log.InfoLog.Printf("[%s] %s", threadName, msg) },
	}

	predeclared := starlark.StringDict{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val, err := toStarlarkValue(params[k])
		if err != nil {
			return nil, fmt.Errorf("%s: parameter %s: %w", threadName, k, err)
		}
		predeclared[k] = val
	}

	globals, err := starlark.ExecFile(thread, threadName, script, predeclared)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", threadName, err)
	}
	return globals, nil
}

func toPairs(name string, v starlark.Value) ([][2]float64, error) {
	seq, ok := v.(starlark.Indexable)
	if !ok {
		return nil, fmt.Errorf("%s: %s must be a list, got %s", name, NodesGlobal, v.Type())
	}
	out := make([][2]float64, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		pair, ok := seq.Index(i).(starlark.Indexable)
		if !ok || pair.Len() != 2 {
			return nil, fmt.Errorf("%s: %s[%d] must be a (lat, lon) pair", name, NodesGlobal, i)
		}
		lat, ok1 := starlark.AsFloat(pair.Index(0))
		lon, ok2 := starlark.AsFloat(pair.Index(1))
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%s: %s[%d] must hold numbers", name, NodesGlobal, i)
		}
		out = append(out, [2]float64{lat, lon})
	}
	return out, nil
}

// Helpers for type conversion
func toStarlarkValue(v interface{}) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

func FromStarlarkValue(v starlark.Value) interface{} {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	case starlark.Indexable:
		out := make([]interface{}, val.Len())
		for i := range out {
			out[i] = FromStarlarkValue(val.Index(i))
		}
		return out
	}
	return nil
}
