package netstate

// NetworkManager's NMState values.
const (
	nmStateUnknown         uint32 = 0
	nmStateAsleep          uint32 = 10
	nmStateDisconnected    uint32 = 20
	nmStateDisconnecting   uint32 = 30
	nmStateConnecting      uint32 = 40
	nmStateConnectedLocal  uint32 = 50
	nmStateConnectedSite   uint32 = 60
	nmStateConnectedGlobal uint32 = 70
)

// nmConnected maps an NMState to connectivity. Only global connectivity
// counts as connected. An unknown state cannot be classified and is
// treated as connected.
func nmConnected(state uint32) bool {
	switch state {
	case nmStateConnectedGlobal, nmStateUnknown:
		return true
	default:
		return false
	}
}
