package main

// Embed the zone database so Asia/Taipei resolves on images without one.
import _ "time/tzdata"
