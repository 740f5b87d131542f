package main

import (
	"fmt"
	"strings"

	"github.com/SakuraBurst/rewards/internal/rewards/controller"
)

// renderRing рисует колесо в одну строку, слот под указателем в скобках
func renderRing(st controller.SpinState) string {
	var b strings.Builder
	n := len(controller.WheelSlots)
	for i := 0; i < n; i++ {
		idx := (st.DisplayedSlot + i) % n
		label := fmt.Sprintf("%d", controller.WheelSlots[idx])
		if i == 0 {
			fmt.Fprintf(&b, "[%4s] ", label)
			continue
		}
		fmt.Fprintf(&b, " %4s  ", label)
	}
	fmt.Fprintf(&b, " %7.1f°", st.Rotation)
	return b.String()
}
