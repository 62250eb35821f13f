/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valpere/eztrans/internal/engine"
	"github.com/valpere/eztrans/internal/native"
	"github.com/valpere/eztrans/internal/store"
	"github.com/valpere/eztrans/internal/translator"
)

// engineOptions turns the loaded config into engine options.
func engineOptions(c config) ([]engine.Option, error) {
	mode, err := engine.ParseMode(c.NarrowMode)
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{
		engine.WithInstallRoot(c.InstallRoot),
		engine.WithNarrowMode(mode),
		engine.WithLogger(logger.Named("engine")),
	}
	if c.NarrowOnly {
		opts = append(opts, engine.WithNarrowOnly())
	}
	return opts, nil
}

// newRegistry returns the registry an engine is built on. Tests swap the
// opener for an in-memory module.
var newRegistry = func() *native.Registry { return native.NewRegistry(nil) }

// startEngine loads and initializes the engine. The caller must Close it. A
// failed initialization still terminates the engine before returning.
func startEngine(c config) (*engine.Engine, error) {
	opts, err := engineOptions(c)
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(newRegistry(), opts...)
	if err != nil {
		return nil, err
	}
	if err := eng.Initialize(c.InitToken, c.DataDir); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

// buildTranslator wraps eng with the translation memory when it is enabled
// and splits long input when max_runes is set. The returned close function
// releases the memory and is never nil.
func buildTranslator(c config, eng translator.Session) (translator.Translator, func(), error) {
	var tr translator.Translator = translator.NewEzTrans(eng, c.Escape)
	closeMemory := func() {}

	if c.Cache.Enabled && c.Cache.Path != "" {
		db, err := openStore(c.Cache.Path)
		if err != nil {
			return nil, nil, err
		}
		tr = translator.NewCached(tr, db, logger.Named("memory"))
		closeMemory = func() { db.Close() }
	}

	if c.MaxRunes > 0 {
		tr = translator.NewChunked(tr, c.MaxRunes)
	}
	return tr, closeMemory, nil
}

func openStore(path string) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
