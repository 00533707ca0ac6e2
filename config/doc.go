// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the runtime configuration for auctionlens.
//
// A Config starts from DefaultConfig, may be overlaid from a YAML file with
// LoadFile, and finally from the environment with ApplyEnv:
//
//	cfg, err := config.LoadFile("auctionlens.yaml")
//	if err != nil {
//	    return err
//	}
//	cfg.ApplyEnv()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Lookup tables left empty in the file fall back to the built-in ones, and
// matcher aliases and variants extend the built-in tables rather than
// replacing them.
package config
