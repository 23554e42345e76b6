//go:build js && wasm
// +build js,wasm

package main

import (
	"bytes"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/Kush-Singh-26/stemr/builder/generators"
	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/search"
	"github.com/Kush-Singh-26/stemr/porter2"
)

var index *models.SearchIndex

func main() {
	c := make(chan struct{})
	fmt.Println("WASM Search Engine Initializing...")

	js.Global().Set("initSearch", js.FuncOf(initSearch))
	js.Global().Set("searchDocuments", js.FuncOf(searchDocuments))
	js.Global().Set("stemWord", js.FuncOf(stemWord))

	fmt.Println("WASM Search Engine Ready")
	<-c
}

// initSearch(url) fetches search.bin and resolves with the document count
func initSearch(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "Error: No URL provided"
	}
	url := args[0].String()

	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolve := args[0]
		reject := args[1]

		go func() {
			data, err := fetchAndDecompress(url)
			if err != nil {
				reject.Invoke(fmt.Sprintf("Fetch/Decompress error: %v", err))
				return
			}

			loaded, err := generators.DecodeIndex(bytes.NewReader(data))
			if err != nil {
				reject.Invoke(fmt.Sprintf("Decode error: %v", err))
				return
			}
			index = loaded
			resolve.Invoke(index.TotalDocs)
		}()

		return nil
	})

	promiseConstructor := js.Global().Get("Promise")
	return promiseConstructor.New(handler)
}

func fetchAndDecompress(url string) ([]byte, error) {
	ch := make(chan interface{}, 1)

	window := js.Global()
	promise := window.Call("fetch", url)

	success := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resp := args[0]
		if !resp.Get("ok").Bool() {
			ch <- fmt.Errorf("bad status: %s", resp.Get("statusText").String())
			return nil
		}

		dsCtor := window.Get("DecompressionStream")
		if dsCtor.IsUndefined() {
			ch <- fmt.Errorf("DecompressionStream not supported in this browser")
			return nil
		}

		decompressed := resp.Get("body").Call("pipeThrough", dsCtor.New("gzip"))
		bufPromise := window.Get("Response").New(decompressed).Call("arrayBuffer")

		bufSuccess := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			uint8Array := window.Get("Uint8Array").New(args[0])
			dst := make([]byte, uint8Array.Length())
			js.CopyBytesToGo(dst, uint8Array)
			ch <- dst
			return nil
		})
		bufFailure := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			ch <- fmt.Errorf("failed to read array buffer: %v", args[0])
			return nil
		})
		bufPromise.Call("then", bufSuccess, bufFailure)
		return nil
	})

	failure := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ch <- fmt.Errorf("fetch failed")
		return nil
	})

	promise.Call("then", success, failure)

	result := <-ch
	if err, ok := result.(error); ok {
		return nil, err
	}
	return result.([]byte), nil
}

// searchDocuments(query[, limit]) returns an array of result objects
func searchDocuments(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || index == nil {
		return js.ValueOf([]interface{}{})
	}
	opts := search.DefaultOptions()
	if len(args) >= 2 && args[1].Type() == js.TypeNumber {
		opts.Limit = args[1].Int()
	}

	results := search.PerformSearch(index, args[0].String(), opts)

	finalResults := make([]interface{}, 0, len(results))
	for _, res := range results {
		tags := make([]interface{}, len(res.Tags))
		for i, t := range res.Tags {
			tags[i] = t
		}
		finalResults = append(finalResults, map[string]interface{}{
			"title":       res.Title,
			"path":        res.Path,
			"description": res.Description,
			"tags":        tags,
			"snippet":     res.Snippet,
			"score":       res.Score,
		})
	}
	return js.ValueOf(finalResults)
}

// stemWord(word) returns the Porter2 stem of a lowercased word
func stemWord(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return ""
	}
	return porter2.Stem(strings.ToLower(args[0].String()))
}
