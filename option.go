/*
   Copyright 2025 The DIRPX Authors

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

package dweb

// Option is a functional option for constructing or transforming an Error.
type Option func(*Error) *Error

// WithStatusOption sets an explicit status on construction.
func WithStatusOption(status int) Option {
	return func(e *Error) *Error {
		return e.WithStatus(status)
	}
}

// WithDataOption sets the payload on construction.
func WithDataOption(data any) Option {
	return func(e *Error) *Error {
		return e.WithData(data)
	}
}

// WithFieldOption adds messages for one field on construction.
func WithFieldOption(field string, msgs ...string) Option {
	return func(e *Error) *Error {
		return e.WithField(field, msgs...)
	}
}

// WithCauseOption attaches a cause on construction.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		return e.WithCause(err)
	}
}
