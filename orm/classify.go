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

package orm

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"dirpx.dev/dweb"
)

// Classify converts storage errors into dweb errors:
//   - gorm.ErrRecordNotFound becomes a not_found error whose cause matches
//     both dweb.ErrRecordNotFound and gorm.ErrRecordNotFound;
//   - *pq.Error becomes an external error with status 503 and no message,
//     so clients get the generic system error text;
//   - anything else, including nil and errors that are already *dweb.Error,
//     is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := dweb.As(err); ok {
		return err
	}
	if IsRecordNotFound(err) {
		return dweb.NotFound("record not found",
			dweb.WithCauseOption(fmt.Errorf("%w: %w", dweb.ErrRecordNotFound, err)))
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return dweb.FailExternal("", dweb.DefaultFailStatus,
			nil, fmt.Errorf("postgres %s (%s): %w", pqErr.Code, pqErr.Code.Name(), err))
	}
	return err
}

// IsRecordNotFound reports whether err is, or wraps, a missing-record error
// from dweb or gorm. It is suitable for render.WithRecordNotFound.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, dweb.ErrRecordNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound) ||
		gorm.IsRecordNotFoundError(err)
}
