/*
Copyright © 2026 the OWIConv authors.
This file is part of OWIConv.

OWIConv is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

OWIConv is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with OWIConv.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command owiconv converts HBL wind and OWI ASCII pressure output into
// the OWI-NWS13 NetCDF format.
package main

import (
	"fmt"
	"os"

	"github.com/coastalmodel/owiconv/owiconvutil"
)

func main() {
	if err := owiconvutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
