package internal

// Program name, used for CLI usage text and default path naming.
const Name = "imgshrink"
