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

package util

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerCharSet is the braille spinner of spinner.CharSets.
const SpinnerCharSet = 31

// spin writes to stderr so the results on stdout stay clean. It does
// nothing when stderr is not a terminal.
var spin = spinner.New(
	spinner.CharSets[SpinnerCharSet],
	100*time.Millisecond,
	spinner.WithWriter(os.Stderr),
)

func StartSpinner() {
	spin.Start()
}

func PauseSpinner() {
	spin.Stop()
}

// Spin runs work with the spinner going and the given suffix after it.
func Spin[T any](suffix string, work func() T) T {
	spin.Suffix = " " + suffix
	StartSpinner()
	defer PauseSpinner()

	return work()
}
