// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package symobf

import (
	"fmt"
	"os"

	"github.com/awslabs/ar-go-symobf/analysis/config"
	"gopkg.in/yaml.v3"
)

// Report is the content of a targets report file
type Report struct {
	Targets []Target `yaml:"targets"`
	Ignored int      `yaml:"ignored"`
	Stats   Stats    `yaml:"stats"`
}

// WriteReport writes the targets of res in a new file of dir, and returns the name of the file.
func WriteReport(dir string, res Result) (string, error) {
	b, err := yaml.Marshal(Report{Targets: res.Targets, Ignored: res.Ignored, Stats: res.Stats})
	if err != nil {
		return "", fmt.Errorf("could not marshal targets: %w", err)
	}
	f, err := os.CreateTemp(dir, config.TargetsReportPattern)
	if err != nil {
		return "", fmt.Errorf("could not create report file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(b); err != nil {
		return "", fmt.Errorf("could not write report file %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}

// ReadReport reads a report written by WriteReport
func ReadReport(filename string) (Report, error) {
	var r Report
	b, err := os.ReadFile(filename)
	if err != nil {
		return r, fmt.Errorf("could not read report: %w", err)
	}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("could not unmarshal report: %w", err)
	}
	return r, nil
}
