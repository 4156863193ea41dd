// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const FilePermissions = 0755

var (
	// Directory holds kibitz.yaml.
	Directory = filepath.Join(xdg.ConfigHome, "kibitz")

	// DataDirectory holds the state of paused SPRT runs.
	DataDirectory = filepath.Join(xdg.DataHome, "kibitz")
	PausedSPRT    = filepath.Join(DataDirectory, "paused", "sprt")
)

// TryMkdir creates dir and its parents if it does not exist yet.
func TryMkdir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, FilePermissions)
	}

	return nil
}

// PausedSPRTFile is where the state of the paused SPRT name is kept.
func PausedSPRTFile(name string) string {
	return filepath.Join(PausedSPRT, name+".yaml")
}
